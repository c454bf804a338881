package format

// Built-in format ids. Ids are registry-scoped; plugins should pick values
// well above these.
const (
	FormatBMP = iota + 1
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatTIFF
	FormatPCX
	FormatMP3
	FormatWAV
	FormatAU
	FormatWMA
	FormatFLAC
	FormatOGG
	FormatMP4
	FormatPDF
	FormatZIP
	FormatRAR
	FormatSQLite
)

// asfHeaderGUID: {75B22630-668E-11CF-A6D9-00AA0062CE6C}, the mandatory
// first object of an ASF container.
var asfHeaderGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

var mp3SyncSignatures = [][]byte{
	{0xFF, 0xFA},
	{0xFF, 0xFB},
	{0xFF, 0xF2},
	{0xFF, 0xF3},
	{0xFF, 0xE2},
	{0xFF, 0xE3},
	[]byte("ID3"),
}

// tagSearchLimit bounds the built-in stream searches: metadata prepended to
// the real bitstream (ID3 tags, XMP blobs, ...) rarely exceeds this.
const tagSearchLimit = 256 * 1024

type formatDef struct {
	id         int
	name       string
	shortName  string
	extensions []string
	mimeTypes  []string

	// signatures are indexed in the registry for sniffing and, unless
	// headerCheck overrides it, also back the descriptor's header check.
	signatures   [][]byte
	headerCheck  HeaderCheck
	streamSearch StreamSearch
}

var builtinFormats = []formatDef{
	{
		id:         FormatBMP,
		name:       "Bitmap",
		shortName:  "BMP",
		extensions: []string{"bmp", "dib"},
		mimeTypes:  []string{"image/bmp", "image/x-bmp"},
		signatures: [][]byte{[]byte("BM")},
	},
	{
		id:         FormatPNG,
		name:       "Portable Network Graphics",
		shortName:  "PNG",
		extensions: []string{"png"},
		mimeTypes:  []string{"image/png"},
		signatures: [][]byte{{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	},
	{
		id:         FormatJPEG,
		name:       "JPEG Image",
		shortName:  "JPEG",
		extensions: []string{"jpg", "jpeg", "jpe"},
		mimeTypes:  []string{"image/jpeg"},
		signatures: [][]byte{{0xFF, 0xD8, 0xFF}},
	},
	{
		id:         FormatGIF,
		name:       "Graphics Interchange Format",
		shortName:  "GIF",
		extensions: []string{"gif"},
		mimeTypes:  []string{"image/gif"},
		signatures: [][]byte{[]byte("GIF87a"), []byte("GIF89a")},
	},
	{
		id:         FormatTIFF,
		name:       "Tagged Image File Format",
		shortName:  "TIFF",
		extensions: []string{"tif", "tiff"},
		mimeTypes:  []string{"image/tiff"},
		signatures: [][]byte{
			{'I', 'I', 0x2A, 0x00},
			{'M', 'M', 0x00, 0x2A},
		},
	},
	{
		id:         FormatPCX,
		name:       "PiCture eXchange",
		shortName:  "PCX",
		extensions: []string{"pcx"},
		mimeTypes:  []string{"image/x-pcx"},
		// A single 0x0A lead byte is too weak for the signature index;
		// the check also pins down version and encoding.
		headerCheck: func(header []byte) bool {
			return len(header) >= 3 &&
				header[0] == 0x0A &&
				header[1] <= 5 &&
				header[2] <= 1
		},
	},
	{
		id:           FormatMP3,
		name:         "MPEG Audio Layer III",
		shortName:    "MP3",
		extensions:   []string{"mp3"},
		mimeTypes:    []string{"audio/mpeg", "audio/mp3"},
		signatures:   mp3SyncSignatures,
		streamSearch: SearchSignature([]byte("ID3"), tagSearchLimit),
	},
	{
		id:         FormatWAV,
		name:       "Waveform Audio",
		shortName:  "WAV",
		extensions: []string{"wav"},
		mimeTypes:  []string{"audio/wav", "audio/x-wav", "audio/wave"},
		// RIFF alone also matches avi/webp containers; require the
		// WAVE form type at offset 8.
		headerCheck: func(header []byte) bool {
			return MatchAnySignature([]byte("RIFF"), []byte("RIFX"))(header) &&
				MatchSignatureAt(8, []byte("WAVE"))(header)
		},
	},
	{
		id:         FormatAU,
		name:       "Sun Audio",
		shortName:  "AU",
		extensions: []string{"au", "snd"},
		mimeTypes:  []string{"audio/basic"},
		signatures: [][]byte{{0x2E, 0x73, 0x6E, 0x64}},
	},
	{
		id:         FormatWMA,
		name:       "Windows Media Audio",
		shortName:  "WMA",
		extensions: []string{"wma", "asf"},
		mimeTypes:  []string{"audio/x-ms-wma", "video/x-ms-asf"},
		signatures: [][]byte{asfHeaderGUID},
	},
	{
		id:         FormatFLAC,
		name:       "Free Lossless Audio Codec",
		shortName:  "FLAC",
		extensions: []string{"flac"},
		mimeTypes:  []string{"audio/flac", "audio/x-flac"},
		signatures: [][]byte{[]byte("fLaC")},
		// FLAC encoders commonly prepend an ID3v2 tag, pushing the
		// marker past any fixed header window.
		streamSearch: SearchSignature([]byte("fLaC"), tagSearchLimit),
	},
	{
		id:         FormatOGG,
		name:       "Ogg",
		shortName:  "OGG",
		extensions: []string{"ogg", "oga", "opus"},
		mimeTypes:  []string{"audio/ogg", "application/ogg"},
		signatures: [][]byte{[]byte("OggS")},
	},
	{
		id:         FormatMP4,
		name:       "MPEG-4 Part 14",
		shortName:  "MP4",
		extensions: []string{"mp4", "m4a", "m4b", "m4v"},
		mimeTypes:  []string{"video/mp4", "audio/mp4"},
		headerCheck: MatchFtypBrand(
			"isom", "iso2", "mp41", "mp42",
			"M4A ", "M4B ", "M4V ", "dash",
		),
	},
	{
		id:         FormatPDF,
		name:       "Portable Document Format",
		shortName:  "PDF",
		extensions: []string{"pdf"},
		mimeTypes:  []string{"application/pdf"},
		signatures: [][]byte{[]byte("%PDF-")},
		// The spec tolerates junk before the marker as long as it
		// appears within the first 1024 bytes.
		streamSearch: SearchSignature([]byte("%PDF-"), 1024),
	},
	{
		id:         FormatZIP,
		name:       "ZIP Archive",
		shortName:  "ZIP",
		extensions: []string{"zip"},
		mimeTypes:  []string{"application/zip"},
		signatures: [][]byte{{'P', 'K', 0x03, 0x04}},
	},
	{
		id:         FormatRAR,
		name:       "RAR Archive",
		shortName:  "RAR",
		extensions: []string{"rar"},
		mimeTypes:  []string{"application/vnd.rar", "application/x-rar-compressed"},
		signatures: [][]byte{
			{'R', 'a', 'r', '!', 0x1A, 0x07, 0x00},
			{'R', 'a', 'r', '!', 0x1A, 0x07, 0x01, 0x00},
		},
	},
	{
		id:         FormatSQLite,
		name:       "SQLite Database",
		shortName:  "SQLite",
		extensions: []string{"db", "sqlite", "sqlite3"},
		mimeTypes:  []string{"application/vnd.sqlite3", "application/x-sqlite3"},
		signatures: [][]byte{[]byte("SQLite format 3\x00")},
	},
}

func (def formatDef) build() *Descriptor {
	d := NewDescriptor(def.id, def.name, def.shortName)
	for _, ext := range def.extensions {
		d.AddExtension(ext)
	}
	for _, mime := range def.mimeTypes {
		d.AddMimeType(mime)
	}

	chk := def.headerCheck
	if chk == nil && len(def.signatures) > 0 {
		chk = MatchAnySignature(def.signatures...)
	}
	d.SetHeaderCheck(chk)
	d.SetStreamSearch(def.streamSearch)
	return d
}

// DefaultRegistry returns a registry loaded with every built-in format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinFormats {
		if err := r.Register(def.build(), def.signatures...); err != nil {
			// Built-in ids and names are unique by construction.
			panic(err)
		}
	}
	return r
}
