package cmd

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/papapumpkin/parampl/internal/config"
	"github.com/papapumpkin/parampl/internal/ui"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, f := range found {
			if f == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		found   []string
		wantErr bool
		wantOut []string
	}{
		{
			name:    "all good",
			cfg:     config.Config{QueueID: "q1", Options: "solver=ipopt", ScreenPath: "screen"},
			found:   []string{"ipopt"},
			wantOut: []string{"✓ queue", "✓ solver"},
		},
		{
			name:    "no solver",
			cfg:     config.Config{QueueID: "q1", ScreenPath: "screen"},
			wantErr: true,
			wantOut: []string{"✗ solver", "solver=xxx"},
		},
		{
			name:    "solver not on path",
			cfg:     config.Config{QueueID: "q1", Options: "solver=knitro", ScreenPath: "screen"},
			wantErr: true,
			wantOut: []string{"✗ solver"},
		},
		{
			name:    "screen checked when selected",
			cfg:     config.Config{QueueID: "q1", Options: "solver=ipopt unix_bkg_method=screen", ScreenPath: "screen"},
			found:   []string{"ipopt"},
			wantErr: true,
			wantOut: []string{"✓ solver", "✗ screen"},
		},
		{
			name:    "no queue",
			cfg:     config.Config{Options: "solver=ipopt", ScreenPath: "screen"},
			found:   []string{"ipopt"},
			wantErr: true,
			wantOut: []string{"✗ queue", "parampl_queue_id"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			err := validate(tt.cfg, ui.NewWithWriters(&out, &errOut), fakeLookPath(tt.found...))
			if tt.wantErr != (err != nil) {
				t.Fatalf("validate err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errValidation) {
				t.Errorf("err = %v, want errValidation", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(errOut.String(), want) {
					t.Errorf("output missing %q:\n%s", want, errOut.String())
				}
			}
		})
	}
}
