package launch

import (
	"fmt"

	"github.com/quicklaunch/ql/internal/store"
)

// Marker identifies generated scripts. The garbage collector only touches
// files that contain it, so it must appear in every generated script.
const Marker = "# QL Command Executor"

const scriptSuffix = "_ql.sh"

// Request is the single-use handoff payload for one launch. Shell is an
// optional override of the user's shell from the settings file.
type Request struct {
	Alias   string
	Command string
	Kind    store.Kind
	Shell   string
}

// Script renders the self-deleting shell script for a request. Both variants
// register a cleanup trap so the file disappears even if the final exec
// fails, and both land the user in an interactive shell afterwards.
func Script(req Request, shell string) string {
	if req.Kind == store.KindChain {
		return fmt.Sprintf(`#!/bin/bash
%s - chain
trap 'rm -f "$0" 2>/dev/null || true' EXIT INT TERM

cd /

echo "Running chain: %s"
echo "Working directory: $(pwd)"
echo "--------------------------------------------------"

set -e
set -o pipefail

%s

echo "--------------------------------------------------"
echo "Chain '%s' completed successfully"

rm -f "$0" 2>/dev/null || true

exec %s
`, Marker, req.Alias, req.Command, req.Alias, shell)
	}

	return fmt.Sprintf(`#!/bin/bash
%s
trap 'rm -f "$0" 2>/dev/null || true' EXIT INT TERM

cd /

echo "Running: %s"
echo "Working directory: $(pwd)"
echo "--------------------------------------------------"

%s

exit_code=$?

echo "--------------------------------------------------"
if [ $exit_code -eq 0 ]; then
    echo "Command completed successfully"
else
    echo "Command failed with exit code $exit_code"
fi

rm -f "$0" 2>/dev/null || true

exec %s
`, Marker, req.Command, req.Command, shell)
}
