//go:build windows

package alert

import "strings"

func platformBackends() []backend {
	return []backend{
		{
			name: "powershell",
			args: func(path string) []string {
				// Single quotes in PowerShell literals are escaped by doubling.
				quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
				return []string{
					"-NoProfile", "-NonInteractive", "-Command",
					"(New-Object Media.SoundPlayer " + quoted + ").PlaySync()",
				}
			},
			formats: []string{".wav"},
		},
	}
}
