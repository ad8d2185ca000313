package ports

// ScreenshotRepository persists captured screenshots
type ScreenshotRepository interface {
	// Dump stores data and returns the name it was stored under. A non-empty
	// override names the file explicitly; otherwise a name is generated from
	// the instrument address and image format.
	Dump(data []byte, format, address, override string) (string, error)
}
