package dto

type AnalyzeInput struct {
	URL      string
	Strategy string
}

type RerunInput struct {
	Index int
}

type ResultOutput struct {
	ID       string
	URL      string
	Strategy string
	Date     string
	Score    float64
	FCP      float64
	LCP      float64
	TTI      float64
	TBT      float64
	CLS      float64
}
