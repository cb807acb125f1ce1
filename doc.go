// Package filecrypt implements a file encryption/decryption pipeline with
// a pluggable catalog of symmetric ciphers. It applies a chosen cipher to
// files of arbitrary size using one of three processing strategies (small,
// large, very-large) and wraps the result in a self-describing container
// format. In very-large mode a padded block cipher's segments are each
// decrypted as a self-contained message that strips its own padding; no
// separate padding pass runs over the decrypted file.
//
// Ciphers are not built into the pipeline; they register themselves by
// tag (see RegisterCipher) from their own packages, the same way Caddy
// modules register themselves with caddy.RegisterModule as a side effect
// of being imported.
package filecrypt

// Version reports the module's version string. It is a fixed value here
// rather than read from build info, since filecrypt is a library first
// and only incidentally has a CLI front-end.
const Version = "v1.0.0"
