package filecrypt

// Extension-only registrations for catalog members spec.md places out of
// scope ("the cipher primitives themselves beyond their encrypt/decrypt
// contracts"). They carry enough metadata for the extension map and
// detection (spec.md §4.8, §4.9) to work, but GetCipher on these tags
// returns an error since no implementation is wired up — callers can
// still EncryptedPathFor() a file or recognize one by extension without
// filecrypt shipping every legacy algorithm.
func init() {
	RegisterCipher("AESG", CipherInfo{DisplayName: "AES-GCM", Extension: "aesg"})
	RegisterCipher("SL20", CipherInfo{DisplayName: "Salsa20", Extension: "sl20"})
	RegisterCipher("3DES", CipherInfo{DisplayName: "Triple DES", Extension: "3des"})
	RegisterCipher("3FSH", CipherInfo{DisplayName: "Twofish", Extension: "3fsh"})
	RegisterCipher("RC2_", CipherInfo{DisplayName: "RC2", Extension: "rc2"})
	RegisterCipher("XCCH", CipherInfo{DisplayName: "XChaCha20", Extension: "xcch"})
}
