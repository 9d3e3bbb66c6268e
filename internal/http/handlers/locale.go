package handlers

import (
	"context"

	"server/internal/middleware"
)

var messages = map[string]map[string]string{
	"en": {
		"quota_exceeded":     "Daily limit reached. Free accounts can solve 5 doubts per day; upgrade for unlimited solving.",
		"invalid_payload":    "Invalid request payload.",
		"question_required":  "Question text is required.",
		"unknown_subject":    "Subject must be Physics, Chemistry, Maths or Biology.",
		"doubt_not_found":    "Doubt not found.",
		"solution_missing":   "This doubt has no solution to simplify yet.",
		"provider_failed":    "The solver is unavailable right now. Please try again.",
		"invalid_tier":       "Subscription must be free, pro or premium.",
		"user_not_found":     "User not found.",
		"invalid_google":     "Invalid Google token.",
		"bookmark_required":  "isBookmarked is required.",
	},
	"hi": {
		"quota_exceeded":     "दैनिक सीमा पूरी हो गई। फ्री खाते प्रतिदिन 5 सवाल हल कर सकते हैं; असीमित के लिए अपग्रेड करें।",
		"invalid_payload":    "अमान्य अनुरोध।",
		"question_required":  "प्रश्न लिखना आवश्यक है।",
		"unknown_subject":    "विषय Physics, Chemistry, Maths या Biology होना चाहिए।",
		"doubt_not_found":    "सवाल नहीं मिला।",
		"solution_missing":   "इस सवाल का अभी कोई हल नहीं है।",
		"provider_failed":    "सॉल्वर अभी उपलब्ध नहीं है। कृपया फिर से प्रयास करें।",
		"invalid_tier":       "सदस्यता free, pro या premium होनी चाहिए।",
		"user_not_found":     "उपयोगकर्ता नहीं मिला।",
		"invalid_google":     "अमान्य Google टोकन।",
		"bookmark_required":  "isBookmarked आवश्यक है।",
	},
}

func message(ctx context.Context, key string) string {
	locale := middleware.LocaleFromContext(ctx)
	if m, ok := messages[locale]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	if msg, ok := messages["en"][key]; ok {
		return msg
	}
	return key
}
