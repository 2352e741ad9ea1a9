package bvh

import (
	"errors"
	"fmt"
)

var (
	ErrNoPrimitives     = errors.New("bvh: no primitives to build from")
	ErrInvalidBounds    = errors.New("bvh: primitive bounds are not finite")
	ErrDegenerateBounds = errors.New("bvh: primitive set collapses to a single point")
	ErrInvalidConfig    = errors.New("bvh: invalid configuration")
	ErrStackOverflow    = errors.New("bvh: traversal stack overflow")
)

// MaxWidth is the widest node the store can hold.
const MaxWidth = 8

// MaxTreeDepth bounds Config.MaxDepth and sizes the traversal stack.
const MaxTreeDepth = 64

type Strategy string

const (
	StrategyBinned Strategy = "binned"
	StrategySweep  Strategy = "sweep"
)

// Config controls the builder. Every Tree keeps the Config it was built with.
type Config struct {
	MaxLeafSize     int      `yaml:"max_leaf_size"`
	MaxBlockSize    int      `yaml:"max_block_size"`
	BranchingFactor int      `yaml:"branching_factor"`
	BinCount        int      `yaml:"bin_count"`
	TraversalCost   float32  `yaml:"traversal_cost"`
	IntersectCost   float32  `yaml:"intersect_cost"`
	LeafBlockFactor float32  `yaml:"leaf_block_factor"`
	MaxDepth        int      `yaml:"max_depth"`
	Strategy        Strategy `yaml:"strategy"`
	Profile         bool     `yaml:"profile"`
}

func DefaultConfig() Config {
	return Config{
		MaxLeafSize:     4,
		MaxBlockSize:    8,
		BranchingFactor: 4,
		BinCount:        32,
		TraversalCost:   1,
		IntersectCost:   1,
		LeafBlockFactor: 1,
		MaxDepth:        48,
		Strategy:        StrategyBinned,
	}
}

func (c Config) Validate() error {
	switch c.BranchingFactor {
	case 2, 4, 8:
	default:
		return fmt.Errorf("%w: branching factor %d not in {2, 4, 8}", ErrInvalidConfig, c.BranchingFactor)
	}
	if c.MaxLeafSize < 1 {
		return fmt.Errorf("%w: max leaf size %d", ErrInvalidConfig, c.MaxLeafSize)
	}
	if c.MaxBlockSize < c.MaxLeafSize {
		return fmt.Errorf("%w: max block size %d below max leaf size %d", ErrInvalidConfig, c.MaxBlockSize, c.MaxLeafSize)
	}
	if c.BinCount < 1 {
		return fmt.Errorf("%w: bin count %d", ErrInvalidConfig, c.BinCount)
	}
	if !(c.TraversalCost > 0) || !(c.IntersectCost > 0) || !(c.LeafBlockFactor > 0) {
		return fmt.Errorf("%w: costs must be positive", ErrInvalidConfig)
	}
	if c.MaxDepth < 1 || c.MaxDepth > MaxTreeDepth {
		return fmt.Errorf("%w: max depth %d not in [1, %d]", ErrInvalidConfig, c.MaxDepth, MaxTreeDepth)
	}
	switch c.Strategy {
	case StrategyBinned, StrategySweep:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	return nil
}
