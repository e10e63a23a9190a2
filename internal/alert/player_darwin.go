//go:build darwin

package alert

func platformBackends() []backend {
	return []backend{
		{
			name:    "afplay",
			args:    func(path string) []string { return []string{path} },
			formats: []string{".wav", ".aiff", ".aif", ".mp3", ".m4a", ".aac", ".caf"},
		},
	}
}
