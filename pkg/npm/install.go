package npm

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/depkit/depkit/pkg/errors"
)

// Installer invokes the npm binary to add packages to a project.
//
// Package names are passed as an argument vector, never joined into a shell
// string, so names are handed to npm exactly as given. The subprocess
// inherits the configured standard streams and the call blocks until it
// exits. There is no retry; cancelling ctx kills the subprocess.
type Installer struct {
	Bin string // npm binary name or path (default "npm")
	Dir string // working directory for the invocation

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewInstaller creates an Installer that runs npm in dir with the calling
// process's standard streams.
func NewInstaller(dir string) *Installer {
	return &Installer{
		Bin:    "npm",
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// InstallSaveDev installs the given packages and records them under
// devDependencies (npm install --save-dev). One npm invocation covers all
// packages. A non-zero exit or spawn failure yields an INSTALL_FAILED error.
func (i *Installer) InstallSaveDev(ctx context.Context, pkgs ...string) error {
	return i.install(ctx, true, pkgs)
}

// Install installs the given packages and records them under dependencies.
func (i *Installer) Install(ctx context.Context, pkgs ...string) error {
	return i.install(ctx, false, pkgs)
}

func (i *Installer) install(ctx context.Context, saveDev bool, pkgs []string) error {
	if len(pkgs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no packages to install")
	}

	args := []string{"install"}
	if saveDev {
		args = append(args, "--save-dev")
	}
	args = append(args, pkgs...)

	bin := i.Bin
	if bin == "" {
		bin = "npm"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = i.Dir
	cmd.Stdin = i.Stdin
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInstallFailed, err,
			"%s install failed for %s", bin, strings.Join(pkgs, " "))
	}
	return nil
}
