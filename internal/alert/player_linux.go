//go:build linux

package alert

func platformBackends() []backend {
	return []backend{
		{
			name:    "paplay",
			args:    func(path string) []string { return []string{path} },
			formats: []string{".wav", ".ogg", ".oga", ".flac"},
		},
		{
			name:    "pw-play",
			args:    func(path string) []string { return []string{path} },
			formats: []string{".wav", ".ogg", ".oga", ".flac"},
		},
		{
			name:    "aplay",
			args:    func(path string) []string { return []string{"-q", path} },
			formats: []string{".wav"},
		},
		{
			name:    "ffplay",
			args:    func(path string) []string { return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path} },
			formats: []string{".wav", ".ogg", ".oga", ".flac", ".mp3", ".m4a"},
		},
	}
}
