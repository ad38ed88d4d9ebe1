package dto

import (
	"strings"

	"mindwell/model"
)

// MoodEntryDraft is the body of a create request. ID, owner and timestamp are
// assigned by the server.
type MoodEntryDraft struct {
	Mood           string   `json:"mood" binding:"required,mood"`
	Intensity      int      `json:"intensity" binding:"required,min=1,max=5"`
	Activities     []string `json:"activities" binding:"omitempty,unique,dive,required,max=50"`
	Notes          string   `json:"notes" binding:"max=5000"`
	Tags           []string `json:"tags" binding:"omitempty,dive,max=50"`
	IsAutoDetected bool     `json:"is_auto_detected"`
}

// MoodEntryPatch carries a partial update. Nil fields are left untouched.
type MoodEntryPatch struct {
	Mood       *string   `json:"mood,omitempty" binding:"omitempty,mood"`
	Intensity  *int      `json:"intensity,omitempty" binding:"omitempty,min=1,max=5"`
	Notes      *string   `json:"notes,omitempty" binding:"omitempty,max=5000"`
	Activities *[]string `json:"activities,omitempty" binding:"omitempty,unique,dive,required,max=50"`
	Tags       *[]string `json:"tags,omitempty" binding:"omitempty,dive,max=50"`
}

// Empty reports whether the patch changes nothing.
func (p MoodEntryPatch) Empty() bool {
	return p.Mood == nil && p.Intensity == nil && p.Notes == nil && p.Activities == nil && p.Tags == nil
}

// ApplyTo merges the patch into entry in place.
func (p MoodEntryPatch) ApplyTo(entry *model.MoodEntry) {
	if p.Mood != nil {
		entry.Mood = *p.Mood
	}
	if p.Intensity != nil {
		entry.Intensity = *p.Intensity
	}
	if p.Notes != nil {
		entry.Notes = *p.Notes
	}
	if p.Activities != nil {
		entry.Activities = append([]string(nil), (*p.Activities)...)
	}
	if p.Tags != nil {
		entry.Tags = append([]string(nil), (*p.Tags)...)
	}
}

// Normalize trims whitespace and drops blank tags and activities.
func (d *MoodEntryDraft) Normalize() {
	d.Mood = strings.ToLower(strings.TrimSpace(d.Mood))
	d.Activities = CleanList(d.Activities)
	d.Tags = CleanList(d.Tags)
}

func (p *MoodEntryPatch) Normalize() {
	if p.Mood != nil {
		m := strings.ToLower(strings.TrimSpace(*p.Mood))
		p.Mood = &m
	}
	if p.Activities != nil {
		a := CleanList(*p.Activities)
		p.Activities = &a
	}
	if p.Tags != nil {
		t := CleanList(*p.Tags)
		p.Tags = &t
	}
}

// CleanList trims every element and removes the empty ones, keeping order.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
