package repository

type AdminRepository interface {
	Start() error
	Stop()
	CheckAuth(login, password string) bool
	IsEmpty() bool
}
