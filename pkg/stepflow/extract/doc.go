// Package extract pulls display-relevant facts out of loosely shaped
// workflow event payloads.
//
// Runner events nest their interesting fields inconsistently: sender
// and recipient may sit at the top level or inside event, data, content
// or message sub-objects, and group-chat events name the actual speaker
// under content.speaker. Participants resolves these with a fixed
// override order that downstream consumers depend on.
//
// The package also formats event content for display with bounded
// truncation, and detects the workflow lifecycle markers the runner
// embeds in free-text print output.
package extract
