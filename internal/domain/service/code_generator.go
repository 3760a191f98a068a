package service

// CodeGenerator produces opaque, collision-resistant verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}
