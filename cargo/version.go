package cargo

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Version runs `cargo --version` and parses the reported version.
func (r *Runner) Version(ctx context.Context) (*version.Version, error) {
	out, err := r.run(ctx, r.Env, "--version")
	if err != nil {
		return nil, err
	}

	return ParseVersion(out.Stdout)
}

// ParseVersion parses the output of `cargo --version`, for example
// `cargo 1.76.0-nightly (71cd3a926 2023-11-20)`.
func ParseVersion(output string) (*version.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 || fields[0] != "cargo" {
		return nil, fmt.Errorf("unexpected cargo version output: %q", strings.TrimSpace(output))
	}

	v, err := version.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("unexpected cargo version %q: %w", fields[1], err)
	}

	return v, nil
}

// CheckVersion returns an error if v is older than min.  A nil min accepts any
// version.
func CheckVersion(v, min *version.Version) error {
	if min != nil && v.LessThan(min) {
		return fmt.Errorf("cargo %s is older than the required %s", v, min)
	}

	return nil
}

// IsNightly returns whether v is a nightly (or locally built) toolchain.
// Printing link arguments requires `-Z unstable-options`, which other
// toolchains only accept with RUSTC_BOOTSTRAP set.
func IsNightly(v *version.Version) bool {
	pre := v.Prerelease()
	return pre == "nightly" || pre == "dev"
}
