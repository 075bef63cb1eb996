package sanitizer

// Sanitizer transforms HTML text. Implementations must be safe for
// concurrent use: a pipeline is shared by every item in a flush.
type Sanitizer interface {
	Sanitize(input string) string
}

// Func adapts a plain function to Sanitizer.
type Func func(string) string

func (f Func) Sanitize(input string) string { return f(input) }

// Pipeline applies its stages in insertion order, each stage receiving the
// previous stage's output. An empty pipeline returns its input unchanged.
type Pipeline struct {
	stages []Sanitizer
}

// NewPipeline creates a pipeline from stages. Nil stages are dropped.
func NewPipeline(stages ...Sanitizer) *Pipeline {
	p := &Pipeline{}
	for _, s := range stages {
		p.Add(s)
	}
	return p
}

// Add appends a stage and returns the pipeline for chaining.
func (p *Pipeline) Add(s Sanitizer) *Pipeline {
	if s != nil {
		p.stages = append(p.stages, s)
	}
	return p
}

func (p *Pipeline) Sanitize(input string) string {
	if p == nil {
		return input
	}
	fns := make([]func(string) string, len(p.stages))
	for i, s := range p.stages {
		fns[i] = s.Sanitize
	}
	return Apply(input, fns...)
}

func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.stages)
}

func (p *Pipeline) IsEmpty() bool { return p.Len() == 0 }

// Stages returns a copy of the pipeline's stages.
func (p *Pipeline) Stages() []Sanitizer {
	if p == nil {
		return nil
	}
	out := make([]Sanitizer, len(p.stages))
	copy(out, p.stages)
	return out
}
