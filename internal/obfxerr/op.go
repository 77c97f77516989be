package obfxerr

// Op names the container or generator operation that failed.
type Op int8

const (
	Unknown Op = iota
	Construct
	Get
	Set
	Assign
	Restore
	Generate
)

func (o Op) String() string {
	ops := map[Op]string{
		Unknown:   "unknown",
		Construct: "construct",
		Get:       "get",
		Set:       "set",
		Assign:    "assign",
		Restore:   "restore",
		Generate:  "generate",
	}

	if str, ok := ops[o]; ok {
		return str
	}
	return "unknown"
}
