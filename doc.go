// Package wavloop reads and rewrites RIFF/WAVE files to edit the loop point
// stored in their smpl chunk.
//
// Parse (or Open) validates the container and keeps the fmt record, the raw
// data payload and the sampler record. The loop start is then read and changed
// with LoopPoint and SetLoopPoint, and Save (or Bytes/Encode) writes a new file
// with the fixed chunk order fmt, data, smpl:
//
//	f, err := wavloop.Open("pad.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	f.SetLoopPoint(f.ClampLoopPoint(44100))
//	if err := f.Save("pad.wav"); err != nil {
//		log.Fatal(err)
//	}
//
// Chunks other than fmt, data and smpl are reported through Diagnostics and
// are not written back. Only 16-bit mono and stereo PCM payloads are handled.
package wavloop
