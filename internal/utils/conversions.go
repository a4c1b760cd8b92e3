package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is one command of a scenario file
type Step struct {
	Command string `yaml:"command"`
	List    string `yaml:"list,omitempty"`
	Value   string `yaml:"value,omitempty"`
	Tag     *int   `yaml:"tag,omitempty"`
	Note    string `yaml:"note,omitempty"`
}

// ConvertStepToRequest converts a scenario step to a request map
func ConvertStepToRequest(step Step) (map[string]interface{}, error) {
	command := strings.ToUpper(strings.TrimSpace(step.Command))
	if command == "" {
		return nil, errors.New("invalid command format")
	}

	request := map[string]interface{}{"command": command}
	if step.List != "" {
		request["list"] = step.List
	}
	if step.Value != "" {
		request["value"] = step.Value
	}
	if step.Tag != nil {
		request["tag"] = *step.Tag
	}
	return request, nil
}

// ConvertRequestToStep converts a request map back to a scenario step
func ConvertRequestToStep(request map[string]interface{}) (Step, error) {
	command, ok := request["command"].(string)
	if !ok {
		return Step{}, errors.New("invalid command format")
	}

	step := Step{Command: command}
	if list, ok := request["list"].(string); ok {
		step.List = list
	}
	if value, ok := request["value"].(string); ok {
		step.Value = value
	}
	if raw, ok := request["tag"]; ok {
		tag, err := ToInt(raw)
		if err != nil {
			return Step{}, err
		}
		step.Tag = &tag
	}
	return step, nil
}

// ToInt converts a decoded tag to an int
func ToInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int8:
		return int(t), nil
	case int16:
		return int(t), nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case uint8:
		return int(t), nil
	case uint16:
		return int(t), nil
	case uint32:
		return int(t), nil
	case float64:
		if t != float64(int(t)) {
			return 0, fmt.Errorf("tag must be an integer, got %v", t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("tag must be an integer, got %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid type for tag: %T", v)
	}
}

// FormatResponse renders a response map as one line of text
func FormatResponse(response map[string]interface{}) string {
	status, _ := response["status"].(string)
	switch {
	case response["message"] != nil:
		return fmt.Sprintf("%s: %v", status, response["message"])
	case response["value"] != nil:
		return fmt.Sprintf("%s: %v", status, response["value"])
	case status == "":
		return fmt.Sprintf("%v", response)
	default:
		return status
	}
}
