package transform

import (
	"errors"
	"fmt"
)

// Pipeline runs its stages 0..N when producing output and N..0 when
// parsing it back, so Backward is always the exact inverse of Forward.
type Pipeline struct {
	stages []Transform
}

// NewPipeline creates a pipeline from at least one stage. Use
// NewNoOpTransform() for an explicitly empty pipeline.
func NewPipeline(stages []Transform) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("transform: pipeline requires at least one stage; use NewNoOpTransform() for an empty pipeline")
	}
	s := make([]Transform, len(stages))
	copy(s, stages)
	return &Pipeline{stages: s}, nil
}

// Forward applies every stage in order.
func (p *Pipeline) Forward(data []byte) ([]byte, error) {
	cur := data
	var err error
	for i, stage := range p.stages {
		cur, err = stage.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline forward: stage %d (%T): %w", i, stage, err)
		}
	}
	return cur, nil
}

// Backward applies every stage's inverse in reverse order.
func (p *Pipeline) Backward(data []byte) ([]byte, error) {
	cur := data
	var err error
	for i := len(p.stages) - 1; i >= 0; i-- {
		stage := p.stages[i]
		cur, err = stage.Reverse(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline backward: stage %d (%T): %w", i, stage, err)
		}
	}
	return cur, nil
}
