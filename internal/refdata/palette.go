package refdata

// Host color names.
const (
	DefaultColor  = "grey70"
	CladeColor    = "tv_blue"
	SubcladeColor = "tv_green"
	MutationColor = "grey20"
)
