/*
 * Copyright (c) 2020 Devtron Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package util

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommandError is returned when a command ran but exited non zero. Output
// holds the combined stdout and stderr.
type CommandError struct {
	Args     []string
	Output   string
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with code %d: %s", strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Output))
}

type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

type CommandRunnerImpl struct {
	logger *zap.SugaredLogger
}

func NewCommandRunnerImpl(logger *zap.SugaredLogger) *CommandRunnerImpl {
	return &CommandRunnerImpl{logger: logger}
}

// Run executes name with args directly, without a shell, and blocks until it
// exits or ctx is done.
func (impl *CommandRunnerImpl) Run(ctx context.Context, name string, args ...string) (string, error) {
	impl.logger.Debugw("running command", "name", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	output := string(out)
	if err == nil {
		return output, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return output, &CommandError{
			Args:     append([]string{name}, args...),
			Output:   output,
			ExitCode: exitErr.ExitCode(),
		}
	}
	return output, errors.Wrapf(err, "error in running %s", name)
}
