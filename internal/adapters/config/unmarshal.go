package config

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// UnmarshalJSON accepts `cmd: Command | Command[]`.
func (t *TargetDTO) UnmarshalJSON(data []byte) error {
	var shape struct {
		Cmd json.RawMessage `json:"cmd"`
		Src []string        `json:"src"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}
	t.Src = shape.Src

	cmds, err := unmarshalOneOrMany[CommandDTO](shape.Cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to parse target cmd")
	}
	t.Cmd = cmds
	return nil
}

// UnmarshalJSON accepts a plain string, or `{ run, daemon? }` where daemon
// accepts a single LogCondition or an array of them.
func (c *CommandDTO) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		c.Run = plain
		return nil
	}

	var shape struct {
		Run    string          `json:"run"`
		Daemon json.RawMessage `json:"daemon"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}
	c.Run = shape.Run

	if len(shape.Daemon) == 0 {
		return nil
	}
	daemon, err := unmarshalOneOrMany[DaemonSpecDTO](shape.Daemon)
	if err != nil {
		return zerr.Wrap(err, "failed to parse daemon spec")
	}
	c.Daemon = daemon
	return nil
}

// unmarshalOneOrMany decodes raw as either a single T or a JSON array of T.
func unmarshalOneOrMany[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var many []T
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
