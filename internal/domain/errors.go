package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Autenticación: credenciales erróneas y cuenta desactivada son señales distintas.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("la cuenta está desactivada")

	// ErrNoCompany el usuario no tiene empresa asignada. Es un ErrNotFound.
	ErrNoCompany = fmt.Errorf("%w: el usuario no pertenece a ninguna empresa", ErrNotFound)
	// ErrSentNotRecorded el email se entregó pero el estado Sent no se pudo guardar.
	ErrSentNotRecorded = errors.New("oferta entregada pero estado no persistido")
	// ErrOfferNumberTaken el número de oferta ya existe para la empresa (choque de creación concurrente).
	ErrOfferNumberTaken = errors.New("número de oferta ya utilizado")
	// ErrDeliveryFailed el envío del email de la oferta falló; la oferta no cambia de estado.
	ErrDeliveryFailed = errors.New("no se pudo enviar la oferta por email")
	// ErrSubscriptionInactive la empresa no tiene una suscripción vigente.
	ErrSubscriptionInactive = errors.New("la suscripción de la empresa no está activa")
	// ErrSelfAction un administrador intentó eliminarse o desactivarse a sí mismo.
	ErrSelfAction = errors.New("no puede realizar esta acción sobre su propio usuario")
)
