package console

type BlockKind int

const (
	BlockBanner BlockKind = iota
	BlockCommandLine
	BlockSuccess
	BlockError
	BlockHint
	BlockContent
)

func (k BlockKind) String() string {
	switch k {
	case BlockBanner:
		return "banner"
	case BlockCommandLine:
		return "command-line"
	case BlockSuccess:
		return "success"
	case BlockError:
		return "error"
	case BlockHint:
		return "hint"
	case BlockContent:
		return "content"
	default:
		return "unknown"
	}
}

// Block is one rendered unit of output. Text holds raw user-facing text and
// is escaped by renderers, never here. Content blocks carry trusted
// markdown from the content provider.
type Block struct {
	Kind     BlockKind
	Text     string
	Topic    string
	Title    string
	Markdown string
	Banner   Banner
}

type Banner struct {
	Art     []string
	Welcome string
	Info    string
	Hint    string
}

// OutputBuffer is append-only apart from Reset.
type OutputBuffer struct {
	blocks  []Block
	version int
}

func NewOutputBuffer(banner Banner) *OutputBuffer {
	b := &OutputBuffer{}
	b.Reset(banner)
	return b
}

func (b *OutputBuffer) Append(blocks ...Block) {
	if len(blocks) == 0 {
		return
	}
	b.blocks = append(b.blocks, blocks...)
	b.version++
}

func (b *OutputBuffer) Reset(banner Banner) {
	b.blocks = []Block{{Kind: BlockBanner, Banner: banner}}
	b.version++
}

func (b *OutputBuffer) Len() int { return len(b.blocks) }

func (b *OutputBuffer) Blocks() []Block {
	return append([]Block(nil), b.blocks...)
}

// Version changes on every mutation so renderers can cache.
func (b *OutputBuffer) Version() int { return b.version }
