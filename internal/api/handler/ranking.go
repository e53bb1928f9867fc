package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/usecases/ranking"
)

// GetZoneRanking retorna o último snapshot gravado pelo job de ranking
func GetZoneRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneNumber, ok := pathInt(w, r, "number")
		if !ok {
			return
		}

		response, err := service.GetZoneRanking(zoneNumber)
		if err != nil {
			writeLedgerError(w, err, "Erro ao buscar ranking da zona")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}
