// Package extract interprets generateContent and embedContent responses: it
// gates on the candidate's finish reason, recovers JSON objects embedded in
// free-text replies and builds the typed outputs of every action.
package extract
