package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vskvj3/liblist/internal/utils"
)

type CommandHandler struct {
	Database *Database
	Config   *utils.Config
}

// Create a new CommandHandler instance. A nil config means the defaults.
func NewCommandHandler(db *Database, config *utils.Config) *CommandHandler {
	if config == nil {
		config = &utils.Config{TagTarget: utils.TagTargetHead, Lookup: utils.LookupLegacy}
	}
	return &CommandHandler{Database: db, Config: config}
}

// HandleCommand runs one request against the database and returns the response
func (h *CommandHandler) HandleCommand(request map[string]interface{}) (map[string]interface{}, error) {
	command, ok := request["command"].(string)
	if !ok {
		return nil, errors.New("invalid or missing 'command' field")
	}
	command = strings.ToUpper(command)
	name, _ := request["list"].(string)
	tailTag := h.Config.TagTarget == utils.TagTargetTail

	switch command {
	case "PING":
		return map[string]interface{}{"status": "OK", "message": "PONG"}, nil

	case "NEW":
		if err := h.Database.Create(name); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "ADD":
		value, valueOk := request["value"].(string)
		if !valueOk {
			return nil, errors.New("ADD requires 'list', 'value' fields")
		}
		if err := h.Database.Add(name, value); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "TAG":
		tag, err := tagOf(command, request)
		if err != nil {
			return nil, err
		}
		if err := h.Database.Tag(name, tag, tailTag); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "ADDTAG":
		value, valueOk := request["value"].(string)
		if !valueOk {
			return nil, errors.New("ADDTAG requires 'list', 'value', 'tag' fields")
		}
		tag, err := tagOf(command, request)
		if err != nil {
			return nil, err
		}
		if err := h.Database.AddWithTag(name, value, tag, tailTag); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "TERM":
		if err := h.Database.Terminate(name); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "LEN":
		length, err := h.Database.Length(name)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "value": length}, nil

	case "FIND":
		tag, err := tagOf(command, request)
		if err != nil {
			return nil, err
		}
		value, found, err := h.Database.Find(name, tag, h.Config.Lookup == utils.LookupStrict)
		if err != nil {
			return nil, err
		}
		if !found {
			return map[string]interface{}{"status": "NOT_FOUND"}, nil
		}
		return map[string]interface{}{"status": "OK", "value": value, "tag": tag}, nil

	case "REV":
		if err := h.Database.Reverse(name); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "LIST":
		values, err := h.Database.Values(name)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "value": values}, nil

	case "DUMP":
		var sb strings.Builder
		if err := h.Database.Dump(name, &sb); err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "message": strings.TrimRight(sb.String(), "\n")}, nil

	case "DROP":
		if err := h.Database.Drop(name); err != nil {
			return nil, err
		}
		return okResponse(), nil

	case "STATS":
		stats := h.Database.Stats()
		return map[string]interface{}{
			"status":      "OK",
			"allocations": stats.Allocations,
			"releases":    stats.Releases,
			"live":        stats.Live(),
			"message":     fmt.Sprintf("allocations=%d releases=%d live=%d", stats.Allocations, stats.Releases, stats.Live()),
		}, nil

	default:
		return nil, fmt.Errorf("unknown command: %s", command)
	}
}

func okResponse() map[string]interface{} {
	return map[string]interface{}{"status": "OK"}
}

func tagOf(command string, request map[string]interface{}) (int, error) {
	raw, ok := request["tag"]
	if !ok {
		return 0, fmt.Errorf("%s requires a 'tag' field (integer)", command)
	}
	return utils.ToInt(raw)
}
