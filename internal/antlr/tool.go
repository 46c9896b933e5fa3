package antlr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"
)

// MinJavaVersion is the oldest Java runtime the generator supports.
const MinJavaVersion = "1.7.0"

// javaVersionRegex matches the quoted version string printed by `java -version`,
// e.g. `"1.8.0_292"` or `"17.0.2"`.
var javaVersionRegex = regexp.MustCompile(`"([1-9]\d*(?:(\.0)|(\.[1-9]\d*))*(?:_\d+)?)"`)

// jarRegex matches a distributed generator jar, capturing its version.
var jarRegex = regexp.MustCompile(`^antlr-(\d+(?:\.\d+){1,2})-complete\.jar$`)

// logRegex matches the timestamped log files the generator dumps with -Xlog.
var logRegex = regexp.MustCompile(`^antlr-(\d{4}-\d{2}-\d{2}-\d{2}\.\d{2}\.\d{2})\.log$`)

// logTimestampLayout is the time layout embedded in generator log file names.
const logTimestampLayout = "2006-01-02-15.04.05"

// FindJava searches for a working Java runtime. A JRE located under
// JAVA_HOME is preferred; PATH is the fallback. Candidates are validated by
// running `java -version` and comparing against MinJavaVersion.
func FindJava(ctx context.Context) (string, error) {
	if home := os.Getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", "java")
		if exe, err := exec.LookPath(candidate); err == nil && validateJava(ctx, exe, MinJavaVersion) {
			return exe, nil
		}
	}

	if exe, err := exec.LookPath("java"); err == nil && validateJava(ctx, exe, MinJavaVersion) {
		return exe, nil
	}

	return "", errors.New("no compatible JRE was found on the system")
}

// validateJava reports whether the given executable is a Java runtime at
// least as new as minVersion.
func validateJava(ctx context.Context, exe, minVersion string) bool {
	// `java -version` prints to stderr.
	out, err := exec.CommandContext(ctx, exe, "-version").CombinedOutput()
	if err != nil {
		return false
	}

	match := javaVersionRegex.FindSubmatch(out)
	if match == nil {
		return false
	}
	return compareVersions(string(match[1]), minVersion) >= 0
}

// FindJar searches libDir for generator jars and returns the path of the
// newest version found.
func FindJar(libDir string) (string, error) {
	entries, err := os.ReadDir(libDir)
	if err != nil {
		return "", fmt.Errorf("can't read generator lib directory %q: %w", libDir, err)
	}

	var best string
	var bestVersion string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := jarRegex.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		if best == "" || compareVersions(match[1], bestVersion) > 0 {
			best = entry.Name()
			bestVersion = match[1]
		}
	}

	if best == "" {
		return "", fmt.Errorf("no ANTLR jar was found in %q", libDir)
	}
	return filepath.Join(libDir, best), nil
}

// findLog returns the newest generator log file in dir, or empty if none
// exists. Used to relocate -Xlog output next to the generated package.
func findLog(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var best string
	var bestStamp time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := logRegex.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		stamp, err := time.Parse(logTimestampLayout, match[1])
		if err != nil {
			continue
		}
		if best == "" || stamp.After(bestStamp) {
			best = entry.Name()
			bestStamp = stamp
		}
	}

	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}
