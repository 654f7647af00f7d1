package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (c ClientCommand) Validate() error {
	switch c.Action {
	case "PERCEIVE", "PERCEIVE_ITEM":
		if c.ObserverID == "" {
			return errors.New("observerId is required")
		}
		if c.TargetID == "" {
			return errors.New("targetId is required")
		}
	case "ADD_LIGHT", "REMOVE_LIGHT":
		if c.Strength <= 0 {
			return errors.New("light strength must be positive")
		}
	case "":
		return errors.New("action is required")
	}
	return nil
}
