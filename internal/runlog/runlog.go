// Package runlog keeps a ledger of finished player lives: one Record per
// session, written when the session ends.
package runlog

import (
	"errors"
	"time"
)

// Outcomes recorded in Record.Outcome.
const (
	OutcomeWon          = "won"
	OutcomeKilled       = "killed"
	OutcomeDisconnected = "disconnected"
	OutcomeGameOver     = "game over"
)

// Record summarises one player's life, from joining to leaving.
type Record struct {
	ID             string        `json:"id" msgpack:"id"`
	Timestamp      time.Time     `json:"timestamp" msgpack:"timestamp"`
	Duration       time.Duration `json:"duration" msgpack:"duration"`
	Player         string        `json:"player" msgpack:"player"`
	Remote         string        `json:"remote" msgpack:"remote"`
	Map            string        `json:"map" msgpack:"map"`
	Outcome        string        `json:"outcome" msgpack:"outcome"`
	TurnsPlayed    int           `json:"turns_played" msgpack:"turns_played"`
	Commands       int           `json:"commands" msgpack:"commands"`
	FailedCommands int           `json:"failed_commands" msgpack:"failed_commands"`
	AttacksLanded  int           `json:"attacks_landed" msgpack:"attacks_landed"`
	AttacksMissed  int           `json:"attacks_missed" msgpack:"attacks_missed"`
	DamageTaken    int           `json:"damage_taken" msgpack:"damage_taken"`
	GoldEarned     int           `json:"gold_earned" msgpack:"gold_earned"`
	GoldHeld       int           `json:"gold_held" msgpack:"gold_held"`
	Items          []string      `json:"items,omitempty" msgpack:"items,omitempty"`
	Shouts         int           `json:"shouts" msgpack:"shouts"`
}

// Sink stores finished records. Write must be safe for concurrent use.
type Sink interface {
	Write(rec Record) error
	Close() error
}

// Nop discards every record.
type Nop struct{}

func (Nop) Write(Record) error { return nil }
func (Nop) Close() error       { return nil }

// Multi fans a record out to several sinks. Every sink is tried; the errors
// are joined.
type Multi []Sink

func (m Multi) Write(rec Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
