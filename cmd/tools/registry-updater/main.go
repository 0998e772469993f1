// cmd/tools/registry-updater/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"internship-workers/internal/common/validation"
	"internship-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		help(out)
		return errors.New("missing command")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return list(*path, out)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := validate(*path); err != nil {
			return err
		}
		fmt.Fprintln(out, "Registry validation passed.")
		return nil

	case "update":
		fs := flag.NewFlagSet("update", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID to update")
		field := fs.String("field", "", "Field to update (status, version, timeout, retries, description)")
		value := fs.String("value", "", "New value for the field")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" || *field == "" || *value == "" {
			return errors.New("id, field and value are required for update")
		}
		if err := update(*path, *id, *field, *value); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *id, *field, *value)
		return nil

	case "check":
		fs := flag.NewFlagSet("check", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		taskType := fs.String("task", "", "Task type whose input schema to apply")
		varsFile := fs.String("vars", "", "JSON file with job variables")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *taskType == "" || *varsFile == "" {
			return errors.New("task and vars are required for check")
		}
		if err := check(*path, *taskType, *varsFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Variables satisfy the %s input schema.\n", *taskType)
		return nil

	case "help", "-h", "--help":
		help(out)
		return nil
	}

	help(out)
	return fmt.Errorf("unknown command %q", args[0])
}

func list(path string, out io.Writer) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tVERSION\tTIMEOUT\tRETRIES")
	for _, a := range reg.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.ImplementationStatus, a.Version, a.Timeout, a.Retries)
	}
	return tw.Flush()
}

// validate runs the structural checks and compiles every input schema.
func validate(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	if len(reg.Activities) == 0 {
		return errors.New("registry contains no activities")
	}
	if problems := reg.Validate(); len(problems) > 0 {
		msgs := make([]string, len(problems))
		for i, p := range problems {
			msgs[i] = p.Error()
		}
		return fmt.Errorf("registry has %d problem(s):\n  %s", len(problems), strings.Join(msgs, "\n  "))
	}
	if _, err := validation.NewValidator(reg); err != nil {
		return err
	}
	return nil
}

func update(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "timeout":
		activity.Timeout = value
	case "description":
		activity.Description = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if problems := reg.Validate(); len(problems) > 0 {
		return fmt.Errorf("update rejected: %w", problems[0])
	}
	return reg.Save(path)
}

func check(path, taskType, varsFile string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	if _, ok := reg.Find(taskType); !ok {
		return fmt.Errorf("task type %s is not registered", taskType)
	}
	v, err := validation.NewValidator(reg)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(varsFile)
	if err != nil {
		return err
	}
	return v.Validate(taskType, raw)
}

func help(out io.Writer) {
	fmt.Fprint(out, `Usage: registry-updater <command> [flags]

Commands:
  list      Show registered activities
  validate  Check registry structure and compile input schemas
  update    Change one field of an activity (-id, -field, -value)
  check     Validate a variables file against a task's input schema (-task, -vars)

All commands accept -path (default configs/activity-registry.json).
`)
}
