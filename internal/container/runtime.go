// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs text-extraction tools packaged as container images
// through docker or podman.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime runs one-shot containers that read stdin and write stdout.
type Runtime interface {
	// Name returns the runtime binary ("docker" or "podman").
	Name() string

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with args, streams stdin into it and copies its
	// stdout to stdout. The container has no network access.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts process execution so runtimes can be tested.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// cliRuntime drives a docker-compatible CLI. Docker and podman differ only
// in the binary name and the image check subcommand.
type cliRuntime struct {
	bin        string
	imageCheck []string
	exec       executor
}

func (r *cliRuntime) Name() string { return r.bin }

func (r *cliRuntime) available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *cliRuntime) ImageExists(image string) error {
	args := append(append([]string{}, r.imageCheck...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *cliRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmdArgs := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(r.bin, cmdArgs, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newRuntime(bin string, e executor) *cliRuntime {
	check := []string{"image", "inspect"}
	if bin == binPodman {
		check = []string{"image", "exists"}
	}
	return &cliRuntime{bin: bin, imageCheck: check, exec: e}
}

// Detect returns the first operational runtime, trying docker before podman.
func Detect() (Runtime, error) {
	return detect(osExecutor{})
}

func detect(e executor) (Runtime, error) {
	for _, bin := range []string{binDocker, binPodman} {
		if rt := newRuntime(bin, e); rt.available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
