package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ramws/internal/application"
	"ramws/internal/config"
	"ramws/internal/domain"
)

// InitResult contains the result of writing a config file
type InitResult struct {
	ConfigPath string
	Message    string
}

// InitCommand writes the default .ramws.yml into a project root
type InitCommand struct {
	ProjectRoot string
	Force       bool
	Template    string
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(projectRoot string, force bool, template string) *InitCommand {
	return &InitCommand{
		ProjectRoot: projectRoot,
		Force:       force,
		Template:    template,
	}
}

// Validate refuses to overwrite an existing config unless forced
func (c *InitCommand) Validate() error {
	if c.ProjectRoot == "" {
		return &application.ValidationError{
			Field:   "project_root",
			Message: "project root is required",
		}
	}
	path := c.configPath()
	if _, err := os.Stat(path); err == nil && !c.Force {
		return &domain.ConfigError{Path: path, Err: errors.New("already exists; use --force to overwrite")}
	}
	return nil
}

// Execute writes the config file
func (c *InitCommand) Execute(_ context.Context) (*InitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	data, err := config.Marshal(config.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	path := c.configPath()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, &domain.FilesystemError{Op: "write config", Path: path, Err: err}
	}

	msg := fmt.Sprintf("created %s", path)
	if c.Template != "" {
		msg += fmt.Sprintf("\ntemplate hint: %s (templates are not applied; adjust the config manually)", c.Template)
	}
	return &InitResult{ConfigPath: path, Message: msg}, nil
}

func (c *InitCommand) configPath() string {
	return filepath.Join(c.ProjectRoot, config.FileName)
}
