// Package chart recebe as séries já calculadas e as entrega ao cliente para desenho.
// Nenhum cálculo de negócio acontece aqui.
package chart

import (
	"sync"

	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

type Kind string

const (
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

// Sink é o destino dos gráficos. O retorno serve apenas para erros de escrita.
type Sink interface {
	Line(chart LineChart) error
	Pie(chart PieChart) error
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LineSeries struct {
	Label  string  `json:"label"`
	Style  string  `json:"style,omitempty"`
	Points []Point `json:"points"`
}

type LineChart struct {
	Title  string       `json:"title"`
	XLabel string       `json:"x_label"`
	YLabel string       `json:"y_label"`
	Series []LineSeries `json:"series"`
}

type PieSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type PieChart struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
}

// NewPieChart calcula a participação de cada fatia; os percentuais somam 100
func NewPieChart(title string, labels []string, values []float64) PieChart {
	shares := utils.PercentShares(values)

	slices := make([]PieSlice, 0, len(values))
	for i, v := range values {
		slices = append(slices, PieSlice{Label: labels[i], Value: v, Percent: shares[i]})
	}

	return PieChart{Title: title, Slices: slices}
}

// Envelope é o formato serializado enviado ao cliente
type Envelope struct {
	Kind Kind       `json:"kind"`
	Line *LineChart `json:"line,omitempty"`
	Pie  *PieChart  `json:"pie,omitempty"`
}

// Recorder guarda o último gráfico recebido
type Recorder struct {
	mu   sync.Mutex
	last *Envelope
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Line(chart LineChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &Envelope{Kind: KindLine, Line: &chart}
	return nil
}

func (r *Recorder) Pie(chart PieChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &Envelope{Kind: KindPie, Pie: &chart}
	return nil
}

func (r *Recorder) Last() *Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
