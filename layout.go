package reloc

// Layout holds the conventional directories of an installation prefix, derived
// from the application directory as if it were PREFIX/bin. Every field is
// Invalid if the application directory is.
type Layout struct {
	Prefix   Path // PREFIX, the parent of the application directory
	Bin      Path // PREFIX/bin
	Sbin     Path // PREFIX/sbin
	Data     Path // PREFIX/share
	Locale   Path // PREFIX/share/locale
	Lib      Path // PREFIX/lib
	LibExec  Path // PREFIX/libexec
	Etc      Path // PREFIX/etc
	Resource Path // Same as ResourceDir
}

// Layout returns the installation layout around the running executable.
func (r *Resolver) Layout() Layout {
	prefix := r.ApplicationDir().Dir()
	return Layout{
		Prefix:   prefix,
		Bin:      prefix.Join("bin"),
		Sbin:     prefix.Join("sbin"),
		Data:     prefix.Join("share"),
		Locale:   prefix.Join("share", "locale"),
		Lib:      prefix.Join("lib"),
		LibExec:  prefix.Join("libexec"),
		Etc:      prefix.Join("etc"),
		Resource: r.ResourceDir(),
	}
}
