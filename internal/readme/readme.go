// Package readme writes the profile markup fragment embedding the rendered
// GIF, with light and dark sources pointing at the same file.
package readme

import (
	"fmt"
	"os"
)

const fragment = `<div align="justify">
<picture>
    <source media="(prefers-color-scheme: dark)" srcset="./%[1]s">
    <source media="(prefers-color-scheme: light)" srcset="./%[1]s">
    <img alt="%[2]s" src="%[1]s">
</picture>
</div>
`

// Write emits the fragment to path, embedding gifName as the image source
// and alt as its alt text. An existing file is overwritten.
func Write(path, gifName, alt string) error {
	content := fmt.Sprintf(fragment, gifName, alt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("readme: write %s: %w", path, err)
	}
	return nil
}
