// Package obfx hides literal constants from static inspection of a compiled
// Go binary.
//
// A value known at build time is encrypted by the obfx-gen code generator
// and only the ciphertext is written into the generated source. At run time
// the value is recovered on each read through a decrypt path that is padded
// with vector no-ops and memory round-trips, so neither the plaintext nor a
// recognisable decrypt routine shows up in the instruction stream.
//
// obfx is not a general-purpose cipher. Its adversary is casual reverse
// engineering (strings, pattern scanners, a single breakpoint), not
// cryptanalysis. There is no key management beyond a seed derived at build
// time, and no integrity protection of the ciphertext.
//
// # Containers
//
//   - Value[T] holds one integer or float.
//   - Array[T] holds a fixed number of them, each encrypted separately.
//   - Chars[C] holds a NUL-terminated narrow, UTF-16 or rune string.
//   - Pointer[T] hides a pointer value (not the pointee).
//
// Operations that make no sense for a container are simply absent from its
// method set: Pointer has no arithmetic, Value has no indexing.
//
// # Keys and sites
//
// Every container is bound to a *Key. A key is derived from a Site (source
// location, build time, ordinal) or directly from a seed, and fixes the
// subkeys, round count and cipher profile:
//
//	key := obfx.NewKey(obfx.Here(), obfx.High)
//	port := obfx.New(key, 8443)
//	fmt.Println(port.Get())
//
// Keys built at run time are convenient for tests and for values computed at
// run time, but the literal passed to New is still compiled into the binary.
//
// # Code Generation
//
// Literals that must never appear in plaintext are declared in a manifest
//
//	# secrets.obfx.yaml
//	package: secrets
//	level: high
//	literals:
//	  - name: APIPort
//	    type: int
//	    value: "8443"
//	  - name: Endpoint
//	    type: string
//	    value: "https://api.example.com"
//
// and sealed with
//
//	//go:generate obfx-gen generate .
//
// which writes secrets_obfx.go containing only seeds and ciphertext:
//
//	var (
//	    apiPortKey = obfx.KeyFromSeed(0x6f3c…, obfx.High)
//	    APIPort    = obfx.Restore[int](apiPortKey, 0x91d2…)
//	)
//
// # Levels
//
// Low runs 2 cipher rounds, Medium 6, High between 6 and 20 depending on the
// seed. The Compact profile trades the cascade at Low for a single
// XOR-rotate pass.
//
// # Errors
//
// Array access outside [0, Len) returns *BoundsError (At panics with it).
// Supplying more elements than an array holds returns *CapacityError.
// Encryption and decryption themselves cannot fail.
//
// # Concurrency
//
// Keys are immutable and may be shared freely. Containers behave like plain
// variables: concurrent Set and Get on the same container is a data race.
package obfx
