package constant

const (
	PlanTypeJuanTap = "juan-tap"
	PlanTypeVideo   = "video"
	PlanTypePhoto   = "photo"
)

var PlanNames = map[string]string{
	PlanTypeJuanTap: "Complimentary Offer",
	PlanTypeVideo:   "Free Video Shoot",
	PlanTypePhoto:   "Free Photo Shoot",
}

var JuanTapPlanDescriptions = map[string]string{
	"standard": "Standard JuanTap Card - Access to basic digital profile features with essential business card capabilities",
	"premium":  "Premium JuanTap Card - Enhanced digital profile with advanced features, analytics, and priority support",
	"elite":    "Elite JuanTap Card - Premium metal NFC digital business card with white glove service and exclusive features",
}

var PlanDescriptions = map[string]string{
	PlanTypeVideo: "Professional video production package ideal for business promotion",
	PlanTypePhoto: "Professional photography session with edited digital copies for business use",
}

const JuanTapSurveyURL = "https://infinitechphil.com/juantap-survey"

var ServiceTitles = map[string]string{
	"website":     "Website",
	"juantap":     "JuanTap",
	"socialmedia": "Social Media",
	"multimedia":  "Multimedia",
}

const (
	MaxProfileImageSize = 5 * 1024 * 1024
)

var ProfileImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}
