// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"
	"strings"
)

// Strategy identifies a parallel multiplication strategy.
type Strategy int

const (
	// StrategyParallelLoop schedules rows through a parallel-for capability.
	StrategyParallelLoop Strategy = iota

	// StrategyManualThread statically partitions rows, one worker per block.
	StrategyManualThread
)

// Strategies lists every strategy in reporting order.
var Strategies = []Strategy{StrategyParallelLoop, StrategyManualThread}

// String returns the short name used on the command line and in reports.
func (s Strategy) String() string {
	switch s {
	case StrategyParallelLoop:
		return "parallel"
	case StrategyManualThread:
		return "thread"
	default:
		return "unknown"
	}
}

// Title returns the heading used for console tables.
func (s Strategy) Title() string {
	switch s {
	case StrategyParallelLoop:
		return "Parallel"
	case StrategyManualThread:
		return "Thread"
	default:
		return "Unknown"
	}
}

// ParseStrategy accepts the String form, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
