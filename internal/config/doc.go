// Package config provides scratchpad settings.
//
// Settings are merged from several sources, higher sources overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority, applied by the CLI
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← SCRATCHPAD_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/scratchpad/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file is TOML and may pull in other files with @include:
//
//	"@include" = ["shared.toml"]
//
//	[note]
//	delimiter = ")))---(((\n"
//
//	[rules]
//	file = "rules.txt"
//	wholeWords = true
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
package config
