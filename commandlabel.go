package main

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	binLinkRegex     = regexp.MustCompile(`node_modules/\.bin/([^/\s]+)`)
	pnpmStoreRegex   = regexp.MustCompile(`node_modules/\.pnpm/([^/\s]+)`)
	npmPackageRegex  = regexp.MustCompile(`node_modules/((?:@[^/\s]+/)?[^/\s]+)`)
	cellarRegex      = regexp.MustCompile(`/(?:opt/homebrew|usr/local)/Cellar/([^/]+)/`)
	appBundleRegex   = regexp.MustCompile(`/([^/]+)\.app/Contents/`)
	scriptExtensions = []string{".js", ".mjs", ".ts", ".py", ".rb", ".pl", ".php"}
)

// labelRule derives a short label from a full command line, or returns ""
// when the command is not its kind
type labelRule func(cmd string) string

// labelRules are tried in order; node_modules/.bin must win over the
// package rules since the same path matches both.
var labelRules = []labelRule{
	binLinkLabel,
	pnpmLabel,
	npmLabel,
	cellarLabel,
	appBundleLabel,
	projectLabel,
	systemBinaryLabel,
}

// projectDirs are path segments after which the next directory names a project
var projectDirs = []string{
	"/Code/",
	"/Projects/",
	"/Developer/",
	"/Sites/",
	"/src/",
	"/repos/",
	"/git/",
	"/workspace/",
	"/OSS/",
}

var systemDirs = []string{
	"/usr/bin/",
	"/usr/sbin/",
	"/usr/libexec/",
	"/usr/lib/",
	"/bin/",
	"/sbin/",
	"/System/",
}

// scriptRunners are interpreters whose first argument is more telling than
// the interpreter itself
var scriptRunners = map[string]bool{
	"node":    true,
	"bun":     true,
	"deno":    true,
	"python":  true,
	"python3": true,
	"ruby":    true,
	"perl":    true,
	"php":     true,
}

// commandLabel shortens a command line for the COMMAND column, e.g.
// "node /home/me/Code/api/node_modules/.bin/vite" becomes "vite (api)".
func commandLabel(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return ""
	}
	for _, rule := range labelRules {
		if label := rule(cmd); label != "" {
			return label
		}
	}
	return scriptLabel(cmd)
}

func withProject(label, cmd string) string {
	if label == "" {
		return ""
	}
	if project := projectName(cmd); project != "" {
		return label + " (" + project + ")"
	}
	return label
}

func binLinkLabel(cmd string) string {
	if m := binLinkRegex.FindStringSubmatch(cmd); m != nil {
		return withProject(m[1], cmd)
	}
	return ""
}

// pnpmLabel handles store entries: "@scope+name@1.2.3" and "name@1.2.3"
func pnpmLabel(cmd string) string {
	m := pnpmStoreRegex.FindStringSubmatch(cmd)
	if m == nil {
		return ""
	}
	entry := m[1]
	if strings.HasPrefix(entry, "@") {
		if _, name, ok := strings.Cut(entry, "+"); ok {
			entry = name
		}
	}
	name, _, _ := strings.Cut(entry, "@")
	if name == "" {
		return withProject(executable(cmd), cmd)
	}
	return withProject(name, cmd)
}

// npmLabel uses the package directory, dropping any scope
func npmLabel(cmd string) string {
	if strings.Contains(cmd, "node_modules/.pnpm/") {
		return ""
	}
	m := npmPackageRegex.FindStringSubmatch(cmd)
	if m == nil {
		return ""
	}
	pkg := m[1]
	if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
		pkg = pkg[i+1:]
	}
	return withProject(pkg, cmd)
}

func cellarLabel(cmd string) string {
	if m := cellarRegex.FindStringSubmatch(cmd); m != nil {
		return m[1]
	}
	return ""
}

func appBundleLabel(cmd string) string {
	if m := appBundleRegex.FindStringSubmatch(cmd); m != nil {
		return m[1]
	}
	return ""
}

func projectLabel(cmd string) string {
	if projectName(cmd) == "" {
		return ""
	}
	return withProject(executable(cmd), cmd)
}

func systemBinaryLabel(cmd string) string {
	for _, dir := range systemDirs {
		if strings.HasPrefix(cmd, dir) {
			return executable(cmd)
		}
	}
	return ""
}

// scriptLabel is the fallback: the executable name, plus the script for
// interpreters ("node (server)" for "node server.js")
func scriptLabel(cmd string) string {
	exe := executable(cmd)
	fields := strings.Fields(cmd)
	if len(fields) < 2 || !scriptRunners[exe] {
		return exe
	}

	arg := fields[1]
	if strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "(") {
		return exe
	}
	script := filepath.Base(arg)
	for _, ext := range scriptExtensions {
		script = strings.TrimSuffix(script, ext)
	}
	if script == "" || script == exe {
		return exe
	}
	return exe + " (" + script + ")"
}

func executable(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

// projectName returns the directory after the outermost project segment,
// so ".../repos/metrics/src/serve.py" names metrics rather than serve.py
func projectName(cmd string) string {
	best, bestAt := "", len(cmd)
	for _, dir := range projectDirs {
		i := strings.Index(cmd, dir)
		if i < 0 || i >= bestAt {
			continue
		}
		name, _, _ := strings.Cut(cmd[i+len(dir):], "/")
		if name != "" {
			best, bestAt = name, i
		}
	}
	return best
}
