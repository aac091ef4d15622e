package dto

import "timebox/internal/modules/preferences/domain"

func FromDomain(p domain.Preferences) Preferences {
	return Preferences{
		StartHour:     p.StartHour,
		EndHour:       p.EndHour,
		Notifications: p.Notifications,
		Theme:         string(p.Theme),
	}
}

func (p PreferencesPatch) ToDomain() domain.Patch {
	patch := domain.Patch{
		StartHour:     p.StartHour,
		EndHour:       p.EndHour,
		Notifications: p.Notifications,
	}
	if p.Theme != nil {
		t := domain.Theme(*p.Theme)
		patch.Theme = &t
	}
	return patch
}

func (p Preferences) ToDomain() domain.Preferences {
	return domain.Preferences{
		StartHour:     p.StartHour,
		EndHour:       p.EndHour,
		Notifications: p.Notifications,
		Theme:         domain.Theme(p.Theme),
	}
}
