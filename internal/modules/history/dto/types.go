package dto

type RecordInput struct {
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

type ReplaceInput struct {
	Index  int
	Record RecordInput
}

type RecordOutput struct {
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
