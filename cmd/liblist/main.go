package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vskvj3/liblist/internal/core"
	"github.com/vskvj3/liblist/internal/datastructures"
	"github.com/vskvj3/liblist/internal/utils"
)

// argParser parses and validates the command and its arguments
func argParser(input string) (map[string]interface{}, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no command entered")
	}

	command := strings.ToUpper(parts[0])
	request := map[string]interface{}{
		"command": command,
	}

	switch command {
	case "PING", "STATS":
		if len(parts) > 1 {
			return nil, fmt.Errorf("%s does not require any arguments", command)
		}

	case "NEW", "TERM", "LEN", "REV", "LIST", "DUMP", "DROP":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s requires a list name", command)
		}
		request["list"] = parts[1]

	case "ADD":
		if len(parts) < 3 {
			return nil, fmt.Errorf("ADD requires a list name and value")
		}
		request["list"] = parts[1]
		request["value"] = strings.Join(parts[2:], " ")

	case "TAG", "FIND":
		if len(parts) != 3 {
			return nil, fmt.Errorf("%s requires a list name and tag", command)
		}
		request["list"] = parts[1]
		request["tag"] = parts[2]

	case "ADDTAG":
		if len(parts) < 4 {
			return nil, fmt.Errorf("ADDTAG requires a list name, value and tag")
		}
		request["list"] = parts[1]
		request["value"] = strings.Join(parts[2:len(parts)-1], " ")
		request["tag"] = parts[len(parts)-1]

	default:
		return nil, fmt.Errorf("unknown command: %s", command)
	}

	return request, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	homeDir, _ := os.UserHomeDir()
	configPtr := flag.String("config", filepath.Join(homeDir, ".liblist", "liblist.yaml"), "Path to the configuration file (.yaml or .json)")
	scriptPtr := flag.String("script", "", "Run a YAML scenario instead of the interactive prompt")
	debugPtr := flag.Bool("debug", false, "Echo debug output to the console")
	recordPtr := flag.String("record", "", "Save the commands of an interactive session as a YAML scenario")
	flag.Parse()

	// Load configurations
	config, err := utils.LoadConfig(*configPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		return 1
	}

	logger := utils.NewLogger(config.LogFile, config.Debug || *debugPtr)
	defer logger.Close()
	logger.Debug("Loaded configurations from " + *configPtr)

	db := core.NewDatabase(datastructures.WithLogger(logger))
	handler := core.NewCommandHandler(db, config)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Teardown failed: " + err.Error())
		}
	}()

	if *scriptPtr != "" {
		if err := runScenario(*scriptPtr, handler, os.Stdout, logger); err != nil {
			logger.Error(err.Error())
			return 1
		}
		return 0
	}

	steps := runPrompt(os.Stdin, os.Stdout, handler)
	if *recordPtr != "" && len(steps) > 0 {
		scenario := &utils.Scenario{Name: "recorded session", Steps: steps}
		if err := utils.SaveScenario(*recordPtr, scenario); err != nil {
			logger.Error("Failed to record session: " + err.Error())
			return 1
		}
		logger.Info(fmt.Sprintf("Recorded %d steps to %s", len(steps), *recordPtr))
	}
	return 0
}

// runScenario executes every step of a scenario file, stopping at the first failure
func runScenario(path string, handler *core.CommandHandler, out io.Writer, logger *utils.Logger) error {
	scenario, err := utils.LoadScenario(path)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Running scenario %q (%d steps)", scenario.Name, len(scenario.Steps)))

	for i, step := range scenario.Steps {
		request, err := utils.ConvertStepToRequest(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		response, err := handler.HandleCommand(request)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, request["command"], err)
		}
		fmt.Fprintf(out, "[%d] %s -> %s\n", i+1, request["command"], utils.FormatResponse(response))
	}
	return nil
}

// runPrompt reads commands line by line until EOF or QUIT and returns the
// commands that succeeded as scenario steps
func runPrompt(in io.Reader, out io.Writer, handler *core.CommandHandler) []utils.Step {
	var steps []utils.Step
	fmt.Fprintln(out, "Type commands (e.g., NEW l, ADD l value, TAG l 42, FIND l 42, LEN l, DUMP l) and press Enter. QUIT to exit.")
	reader := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, ">> ")
		if !reader.Scan() {
			fmt.Fprintln(out)
			return steps
		}
		input := strings.TrimSpace(reader.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "QUIT") {
			return steps
		}

		// Parse and validate the input
		request, err := argParser(input)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}

		response, err := handler.HandleCommand(request)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, utils.FormatResponse(response))

		step, err := utils.ConvertRequestToStep(request)
		if err != nil {
			continue
		}
		steps = append(steps, step)
	}
}
