package models

// UserData contient le profil de l'entreprise et les identifiants locaux.
// Le mot de passe est stocké et comparé en clair: il n'y a aucun modèle de
// sécurité d'authentification dans ce système mono-utilisateur local.
type UserData struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	NIF         string `json:"nif"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Logo        string `json:"logo"`
	Password    string `json:"password"`
}

// ProfileData est la vue éditable du profil côté écran de réglages. Elle est
// synchronisée avec UserData à chaque sauvegarde.
type ProfileData struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	NIF          string `json:"nif"`
	Image        string `json:"image"`
}

// AppSettings regroupe les préférences de l'application, dont l'état de la
// permission de notifications.
type AppSettings struct {
	NotificationsGranted bool `json:"notificationsGranted"`
}
