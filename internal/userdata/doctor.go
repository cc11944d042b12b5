package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/plugx/internal/branding"
)

// Check validates the home directory structure and permissions and returns
// the number of problems left unfixed. When fix is true it repairs what it
// can.
func Check(w io.Writer, l Layout, fix bool) int {
	fmt.Fprintln(w, "Home directory check:")

	if _, err := os.Stat(l.Root); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", l.Root)
		if !fix {
			fmt.Fprintf(w, "         Run '%s init' to create\n", branding.CLIName())
			return 1
		}
		fmt.Fprintln(w, "  [FIX ] Running init...")
		if err := Init(w, l); err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", l.Root)

	problems := 0
	problems += checkDir(w, l.PluginsDir(), DirPermNormal, false, fix)
	problems += checkDir(w, l.StateDir(), DirPermSecure, true, fix)
	problems += checkFile(w, l.RecordPath(), defaultRecordContent, fix)
	problems += checkFile(w, l.ConfigPath(), defaultConfigContent, fix)
	problems += checkStateFilePerms(w, l.StateDir(), fix)
	return problems
}

func checkDir(w io.Writer, path string, perm os.FileMode, strict, fix bool) int {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return 1
		}
		if mkErr := os.MkdirAll(path, perm); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return 1
		}
		chmod(path, perm)
		fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", path, perm)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return 1
	}

	actual := info.Mode().Perm()
	if strict && !permOK(actual, perm) {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, actual, perm)
		if !fix {
			return 1
		}
		if chErr := chmod(path, perm); chErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
			return 1
		}
		fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, perm)
		return 0
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, actual)
	return 0
}

func checkFile(w io.Writer, path, content string, fix bool) int {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return 1
		}
		if err := ensureFile(w, path, content, FilePermNormal); err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}

// checkStateFilePerms reports state files readable by group or others.
func checkStateFilePerms(w io.Writer, dir string, fix bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0 // already reported by checkDir
	}

	problems := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		perm := info.Mode().Perm()
		if perm&0o077 == 0 || permOK(perm, FilePermSecure) {
			continue
		}
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, perm, FilePermSecure)
		if !fix {
			problems++
			continue
		}
		if chErr := chmod(path, FilePermSecure); chErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, FilePermSecure)
	}
	return problems
}
