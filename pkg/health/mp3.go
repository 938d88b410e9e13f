package health

// frameSyncIndex returns the offset of the first MPEG audio frame sync word in
// data, or -1. A sync word is 0xFF followed by a byte whose top three bits are
// set.
func frameSyncIndex(data []byte) int {
	for i := 0; i < len(data)-1; i++ {
		if data[i] == 0xFF && data[i+1]&0xE0 == 0xE0 {
			return i
		}
	}
	return -1
}
