package promptutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

type Prompter interface {
	PromptForConfirmation(prompt string) bool
}

type RealPrompter struct{}

func NewPrompt() Prompter {
	return &RealPrompter{}
}

func (p *RealPrompter) PromptForConfirmation(prompt string) bool {
	promptInstance := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	result, err := promptInstance.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			fmt.Println("\nReceived termination signal. Exiting.")
		}
		return false
	}
	return strings.HasPrefix(strings.ToLower(result), "y")
}
