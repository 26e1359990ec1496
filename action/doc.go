// Package action runs the task-level operations against the Gemini API.
//
// Every operation follows the same pipeline: build the conversation with
// package prompts, merge the caller's settings with geminikit.ApplySettings,
// send it through the geminikit.Transport, gate on the finish reason and
// extract the typed output with package extract. Operations hold no state
// between calls; Client and Registry are safe for concurrent use.
package action
