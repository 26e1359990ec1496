// Package config loads the geminikit.yaml file: credentials, transport choice,
// logging, server and catalog settings, and the named action definitions.
//
// Load reads the file, applies defaults, then environment overrides
// (GEMINIKIT_API_KEY, GEMINI_API_KEY, GEMINIKIT_BASE_URL, GEMINIKIT_TRANSPORT,
// GEMINIKIT_LISTEN, GEMINIKIT_LOG_LEVEL), and validates the result.
package config
