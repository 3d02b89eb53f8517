// Package provider adapts external models to the corpus service: embedding
// providers that turn text into vectors and an answer guesser that picks the
// most likely option of a multiple-choice question.
package provider
