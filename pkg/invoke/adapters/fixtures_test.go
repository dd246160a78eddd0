package adapters

import (
	"errors"

	"github.com/toyz/invoke/pkg/invoke"
)

var errKaput = errors.New("kaput")

// mathService hosts the methods the adapter tests expose over HTTP.
type mathService struct{}

func (mathService) Add(i, j int) int { return i + j }

func (mathService) AddAsync(i, j int) *invoke.Task[int] {
	return invoke.Go(func() (int, error) { return i + j, nil })
}

func (mathService) Touch() {}

func (mathService) Fail() error { return errKaput }
