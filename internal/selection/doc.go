// Package selection decides which catalog entries a run processes: every
// entry, only those without a preview, or an explicit id list. It also owns
// the interactive chooser loop with its injectable prompt source.
package selection
