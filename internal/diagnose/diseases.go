package diagnose

import "strings"

// Disease is the locally-held metadata for one inference label.
type Disease struct {
	Name        string
	Description string
	Severity    string
	Treatment   []string
}

// Lookup maps an inference label ("<plant>___<condition>") to disease
// metadata. Unknown labels get a generic entry so the UI always has
// something to show; they are never an error.
func Lookup(label string) Disease {
	if d, ok := diseaseTable[label]; ok {
		return d
	}
	return Disease{
		Name:        "Unknown Condition",
		Description: "Condition requires expert assessment.",
		Severity:    "Unknown",
		Treatment: []string{
			"Consult an agricultural expert",
			"Monitor the plant closely",
			"Isolate the plant if symptoms spread",
		},
	}
}

// SplitLabel breaks a prediction label into plant and condition parts.
func SplitLabel(label string) (plant, condition string) {
	parts := strings.SplitN(label, "___", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "", label
}

var diseaseTable = map[string]Disease{
	"Apple___Apple_scab": {
		Name:        "Apple Scab",
		Description: "Fungal disease causing dark spots on leaves and fruit.",
		Severity:    "Severe",
		Treatment: []string{
			"Use appropriate fungicides",
			"Remove infected leaves immediately",
			"Improve air circulation",
			"Clean up fallen leaves in autumn",
		},
	},
	"Apple___Black_rot": {
		Name:        "Black Rot",
		Description: "Causes dark, sunken spots on apples.",
		Severity:    "Severe",
		Treatment: []string{
			"Prune infected branches",
			"Apply fungicides",
			"Remove mummified fruits",
			"Ensure good air circulation",
		},
	},
	"Apple___Cedar_apple_rust": {
		Name:        "Cedar Apple Rust",
		Description: "Orange spots on leaves; affects apples and cedars.",
		Severity:    "Moderate",
		Treatment: []string{
			"Remove nearby cedar trees",
			"Apply preventive fungicides",
			"Plant resistant varieties",
			"Monitor trees regularly",
		},
	},
	"Apple___healthy": {
		Name:        "Healthy Apple Tree",
		Description: "Tree appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Monitor for early signs of disease",
			"Practice proper pruning",
		},
	},
	"Cherry___Powdery_mildew": {
		Name:        "Powdery Mildew",
		Description: "White powdery fungus on leaves.",
		Severity:    "Moderate",
		Treatment: []string{
			"Apply sulfur-based fungicides",
			"Prune to improve ventilation",
			"Remove infected parts",
		},
	},
	"Cherry___healthy": {
		Name:        "Healthy Cherry Tree",
		Description: "Tree appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Monitor for disease signs",
		},
	},
	"Corn___Cercospora_leaf_spot": {
		Name:        "Cercospora Leaf Spot",
		Description: "Gray lesions on leaves.",
		Severity:    "Moderate to Severe",
		Treatment: []string{
			"Use resistant varieties",
			"Apply appropriate fungicides",
			"Practice crop rotation",
		},
	},
	"Corn___Common_rust": {
		Name:        "Common Rust",
		Description: "Reddish-brown spots on leaves.",
		Severity:    "Moderate",
		Treatment: []string{
			"Plant resistant hybrids",
			"Apply fungicides if severe",
			"Monitor crop regularly",
		},
	},
	"Corn___Northern_Leaf_Blight": {
		Name:        "Northern Leaf Blight",
		Description: "Brown, elongated lesions.",
		Severity:    "Severe",
		Treatment: []string{
			"Use resistant varieties",
			"Apply fungicides when needed",
			"Remove crop debris",
		},
	},
	"Corn___healthy": {
		Name:        "Healthy Corn Plant",
		Description: "Plant appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Maintain proper spacing",
		},
	},
	"Grape___Black_rot": {
		Name:        "Black Rot",
		Description: "Dark spots and fruit shriveling.",
		Severity:    "Severe",
		Treatment: []string{
			"Prune infected areas",
			"Apply fungicides",
			"Remove mummified fruits",
		},
	},
	"Grape___healthy": {
		Name:        "Healthy Grape Vine",
		Description: "Vine appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Monitor for disease signs",
		},
	},
	"Potato___Early_blight": {
		Name:        "Early Blight",
		Description: "Dark spots with concentric rings on lower leaves.",
		Severity:    "Moderate",
		Treatment: []string{
			"Apply fungicides",
			"Practice crop rotation",
			"Remove infected foliage",
		},
	},
	"Potato___Late_blight": {
		Name:        "Late Blight",
		Description: "Water-soaked lesions spreading rapidly in cool wet weather.",
		Severity:    "Severe",
		Treatment: []string{
			"Remove infected plants immediately",
			"Apply preventive fungicides",
			"Avoid overhead watering",
		},
	},
	"Potato___healthy": {
		Name:        "Healthy Potato Plant",
		Description: "Plant appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Hill soil around stems",
		},
	},
	"Strawberry___Leaf_scorch": {
		Name:        "Leaf Scorch",
		Description: "Purple blotches that dry out leaf edges.",
		Severity:    "Moderate",
		Treatment: []string{
			"Remove infected leaves",
			"Improve air circulation",
			"Renovate beds after harvest",
		},
	},
	"Strawberry___healthy": {
		Name:        "Healthy Strawberry Plant",
		Description: "Plant appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Monitor for disease signs",
		},
	},
	"Tomato___Bacterial_spot": {
		Name:        "Bacterial Spot",
		Description: "Water-soaked lesions on leaves.",
		Severity:    "Moderate to Severe",
		Treatment: []string{
			"Apply copper-based sprays",
			"Remove infected leaves",
			"Avoid overhead watering",
		},
	},
	"Tomato___Early_blight": {
		Name:        "Early Blight",
		Description: "Yellowing with brown spots on lower leaves.",
		Severity:    "Moderate",
		Treatment: []string{
			"Apply fungicides",
			"Remove infected foliage",
			"Mulch around plants",
		},
	},
	"Tomato___Late_blight": {
		Name:        "Late Blight",
		Description: "Large water-soaked lesions spreading rapidly.",
		Severity:    "Severe",
		Treatment: []string{
			"Remove infected plants immediately",
			"Apply preventive fungicides",
			"Improve air circulation",
		},
	},
	"Tomato___Leaf_Mold": {
		Name:        "Leaf Mold",
		Description: "Yellow patches turning into brown mold.",
		Severity:    "Moderate",
		Treatment: []string{
			"Improve ventilation",
			"Apply fungicides",
			"Reduce humidity",
		},
	},
	"Tomato___Septoria_leaf_spot": {
		Name:        "Septoria Leaf Spot",
		Description: "Small brown spots with yellow halos.",
		Severity:    "Moderate",
		Treatment: []string{
			"Remove infected leaves",
			"Apply fungicides",
			"Mulch around plants",
		},
	},
	"Tomato___Yellow_Leaf_Curl_Virus": {
		Name:        "Tomato Yellow Leaf Curl Virus",
		Description: "Leaves curl and turn yellow.",
		Severity:    "Severe",
		Treatment: []string{
			"Control whiteflies",
			"Use resistant varieties",
			"Remove infected plants",
		},
	},
	"Tomato___Tomato_mosaic_virus": {
		Name:        "Tomato Mosaic Virus",
		Description: "Mottled, curled leaves.",
		Severity:    "Severe",
		Treatment: []string{
			"Remove infected plants",
			"Sanitize tools",
			"Use resistant varieties",
		},
	},
	"Tomato___healthy": {
		Name:        "Healthy Tomato Plant",
		Description: "Plant appears healthy with no visible disease symptoms.",
		Severity:    "Healthy",
		Treatment: []string{
			"Continue regular maintenance",
			"Water at base of plant",
		},
	},
}
