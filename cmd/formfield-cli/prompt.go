package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var errAborted = errors.New("prompt aborted")

// chooseOne asks the user to pick one of options.
func chooseOne(message string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no %s available", message)
	}
	prompt := &survey.Select{
		Message: message + ":",
		Options: options,
	}
	for _, option := range options {
		if option == def {
			prompt.Default = def
			break
		}
	}
	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}
