package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PranayKumarReddyW/Backend/internal/config"
	"github.com/PranayKumarReddyW/Backend/internal/handlers"
	"github.com/PranayKumarReddyW/Backend/internal/middleware"
)

func SetupRouter(client *mongo.Client, cfg config.Config) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	authMW := middleware.NewAuthMiddleware(client, cfg.DatabaseName, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(client, cfg.DatabaseName, cfg.JWTSecret)
	coordinatorHandler := handlers.NewCoordinatorHandler(client, cfg.DatabaseName, cfg.JWTSecret)
	adminHandler := handlers.NewAdminHandler(client, cfg.DatabaseName, cfg.JWTSecret)
	eventHandler := handlers.NewEventHandler(client, cfg.DatabaseName)
	paymentHandler := handlers.NewPaymentHandler(client, cfg)

	users := router.PathPrefix("/api/users").Subrouter()
	users.HandleFunc("/register", userHandler.RegisterUser).Methods("POST")
	users.HandleFunc("/login", userHandler.LoginUser).Methods("POST")
	users.HandleFunc("/logout", userHandler.LogoutUser).Methods("POST")
	users.Handle("/user", authMW.Student(http.HandlerFunc(userHandler.GetUser))).Methods("GET")
	users.Handle("/user/{id}", authMW.CoordinatorOrAdmin(http.HandlerFunc(userHandler.GetUserByID))).Methods("GET")
	users.Handle("/users", authMW.Coordinator(http.HandlerFunc(userHandler.GetUsers))).Methods("GET")
	users.Handle("/allusers", authMW.Admin(http.HandlerFunc(userHandler.GetAllUsers))).Methods("GET")
	users.Handle("/user", authMW.Student(http.HandlerFunc(userHandler.UpdateUser))).Methods("PUT")

	coordinators := router.PathPrefix("/api/coordinator").Subrouter()
	coordinators.HandleFunc("/register", coordinatorHandler.RegisterCoordinator).Methods("POST")
	coordinators.HandleFunc("/login", coordinatorHandler.LoginCoordinator).Methods("POST")
	coordinators.HandleFunc("/logout", coordinatorHandler.LogoutCoordinator).Methods("POST")
	coordinators.Handle("/coordinator/{id}", authMW.Coordinator(http.HandlerFunc(coordinatorHandler.GetCoordinatorByID))).Methods("GET")
	coordinators.Handle("/coordinator", authMW.Admin(http.HandlerFunc(coordinatorHandler.GetCoordinators))).Methods("GET")

	admins := router.PathPrefix("/api/admin").Subrouter()
	admins.HandleFunc("/register", adminHandler.RegisterAdmin).Methods("POST")
	admins.HandleFunc("/login", adminHandler.LoginAdmin).Methods("POST")

	events := router.PathPrefix("/api/events").Subrouter()
	events.HandleFunc("/event", eventHandler.CreateEvent).Methods("POST")
	events.Handle("/events", authMW.Student(http.HandlerFunc(eventHandler.GetEvents))).Methods("GET")
	events.Handle("/event/{id}", authMW.Student(http.HandlerFunc(eventHandler.GetEventByID))).Methods("GET")
	events.Handle("/register/{id}", authMW.Student(http.HandlerFunc(eventHandler.RegisterForEvent))).Methods("POST")

	router.HandleFunc("/create-order", paymentHandler.CreateOrder).Methods("POST")
	router.HandleFunc("/status", paymentHandler.Status).Methods("GET", "POST")
	router.HandleFunc("/send-qr-code", paymentHandler.SendQRCode).Methods("POST")

	return router
}
