// Package geminikit builds requests for the Gemini generative-language API and
// holds the records shared by its prompt builders, response extractors and
// transports: the canonical conversation, the generateContent and embedContent
// wire records, and the safety and generation settings overlay.
//
// Task-level operations live in package action; prompt construction in package
// prompts; response interpretation in package extract.
package geminikit
