package recommend

import "github.com/mr1hm/go-shelter-advisor/internal/models"

var guidance = map[models.DisasterType]string{
	models.DisasterTypeFlood:      "Move to higher ground immediately. Avoid walking or driving through flood water. Bring emergency supplies, important documents, and medications. Stay away from electrical equipment if you're wet.",
	models.DisasterTypeEarthquake: "Drop, Cover, and Hold On during shaking. After shaking stops, evacuate if building is damaged. Watch for aftershocks. Bring emergency kit with water, food, flashlight, and first aid supplies.",
	models.DisasterTypeWildfire:   "Evacuate immediately if ordered. Close all windows and doors. Bring identification, medications, and important documents. If trapped, stay low to avoid smoke inhalation.",
	models.DisasterTypeTornado:    "Seek shelter in interior room on lowest floor. Stay away from windows. Cover yourself with blankets or mattress. Mobile homes are not safe - find sturdy building or underground shelter.",
	models.DisasterTypeHurricane:  "Evacuate if in evacuation zone. If staying, go to interior room away from windows. Have emergency supplies for several days. Watch for storm surge and flooding.",
	models.DisasterTypeNone:       "Stay informed about local hazards. Keep emergency kit ready with water, food, flashlight, radio, and first aid supplies. Know your evacuation routes.",
}

// Guidance returns built-in safety advice for the disaster type.
func Guidance(dt models.DisasterType) string {
	if g, ok := guidance[dt]; ok {
		return g
	}
	return guidance[models.DisasterTypeNone]
}
