package metadata

// ExifTags returns every readable EXIF tag in data by name. Binary tags that
// have no printable form are skipped. When a name appears in more than one
// IFD the first one wins.
func ExifTags(data []byte) (map[string]string, error) {
	index, err := collectExif(data)
	if err != nil {
		return nil, err
	}

	tags := make(map[string]string)
	for _, ifd := range index.Ifds {
		for _, entry := range ifd.Entries() {
			name := entry.TagName()
			if name == "" {
				continue
			}
			if _, seen := tags[name]; seen {
				continue
			}
			value, err := entry.Format()
			if err != nil || value == "" {
				continue
			}
			tags[name] = value
		}
	}
	return tags, nil
}
